// cmd/tools/sweep-generator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/silentkartographer/ndlar-flow/pkg/stageconfig"
)

func main() {
	base := flag.String("config", "", "Base stage config to sweep (YAML)")
	param := flag.String("param", "", "Dotted param key (e.g. params.event_builder_config.window)")
	values := flag.String("values", "", "Comma-separated integer values")
	outDir := flag.String("out", ".", "Output directory")
	flag.Parse()

	if *base == "" || *param == "" || *values == "" {
		fmt.Println("Error: -config, -param, and -values are required.")
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*base)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", *base, err)
		os.Exit(1)
	}

	// The base document must itself be valid before sweeping.
	if _, err := stageconfig.Parse(data); err != nil {
		fmt.Printf("Error: base config invalid: %v\n", err)
		os.Exit(1)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		fmt.Printf("Error parsing %s: %v\n", *base, err)
		os.Exit(1)
	}

	stem := strings.TrimSuffix(filepath.Base(*base), filepath.Ext(*base))
	suffix := strings.ReplaceAll(strings.TrimPrefix(*param, "params."), ".", "_")

	for _, field := range strings.Split(*values, ",") {
		field = strings.TrimSpace(field)
		value, err := strconv.Atoi(field)
		if err != nil {
			fmt.Printf("Error: value %q is not an integer\n", field)
			os.Exit(1)
		}

		variant := cloneDoc(doc)
		if err := setKey(variant, *param, value); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		// Re-validate so an out-of-range sweep value never reaches disk.
		if _, err := stageconfig.FromMap(variant); err != nil {
			fmt.Printf("Error: %s=%d: %v\n", *param, value, err)
			os.Exit(1)
		}

		out, err := yaml.Marshal(variant)
		if err != nil {
			fmt.Printf("Error marshaling variant: %v\n", err)
			os.Exit(1)
		}

		name := fmt.Sprintf("%s_%s_%d.yaml", stem, suffix, value)
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, out, 0o644); err != nil {
			fmt.Printf("Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	}
}

// cloneDoc deep-copies the mapping structure so each variant can be edited
// independently. Leaf values are shared; setKey replaces leaves wholesale.
func cloneDoc(doc map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if m, ok := v.(map[string]interface{}); ok {
			out[k] = cloneDoc(m)
		} else {
			out[k] = v
		}
	}
	return out
}

// setKey replaces an existing leaf named by a dotted key. A key absent from
// the base document is an error, not an insert.
func setKey(doc map[string]interface{}, key string, value interface{}) error {
	parts := strings.Split(key, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]interface{})
		if !ok {
			return fmt.Errorf("param %q: %q is not a mapping in the base config", key, p)
		}
		cur = next
	}
	leaf := parts[len(parts)-1]
	if _, ok := cur[leaf]; !ok {
		return fmt.Errorf("param %q not present in the base config", key)
	}
	cur[leaf] = value
	return nil
}
