/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package json

import (
	"bytes"
	"encoding/json"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/yaml"
)

// Unmarshal parses the JSON-encoded data into the value pointed to by v.
func Unmarshal(data []byte, v interface{}) error {
	d := json.NewDecoder(bytes.NewReader(data))
	return d.Decode(v)
}

// ParseYamlToJson decodes a YAML or JSON document into an unstructured
// object, preserving the manifest exactly as submitted.
func ParseYamlToJson(data string) (*unstructured.Unstructured, error) {
	decoder := yaml.NewYAMLToJSONDecoder(strings.NewReader(data))
	var obj unstructured.Unstructured
	err := decoder.Decode(&obj)
	return &obj, err
}
