package sinkenv

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func getenv(k string) (string, bool) {
	v, ok := os.LookupEnv(k)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func envInt(k string) (int, bool, error) {
	v, ok := getenv(k)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %q is not an integer", k, v)
	}
	return n, true, nil
}

func envInt64(k string) (int64, bool, error) {
	v, ok := getenv(k)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %q is not an integer", k, v)
	}
	return n, true, nil
}

func envBool(k string) (bool, bool, error) {
	v, ok := getenv(k)
	if !ok {
		return false, false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false, fmt.Errorf("%s: %q is not a boolean", k, v)
	}
	return b, true, nil
}

// parseKV reads "k=v,k2=v2". Entries without '=' are skipped.
func parseKV(s string) map[string]string {
	out := map[string]string{}
	for _, kv := range strings.Split(s, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		p := strings.SplitN(kv, "=", 2)
		if len(p) == 2 {
			out[strings.TrimSpace(p[0])] = strings.TrimSpace(p[1])
		}
	}
	return out
}
