// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package validator

import (
	"net/url"

	"github.com/xeipuuv/gojsonschema"
)

// InvalidURLMessage is reported for any input that is not an absolute URL.
const InvalidURLMessage = "Invalid url"

// inputSchema describes the request document.
const inputSchema = `{
	"type": "object",
	"properties": {
		"url": {"type": "string", "format": "uri", "minLength": 1}
	},
	"required": ["url"]
}`

var schemaLoader = gojsonschema.NewStringLoader(inputSchema)

// ParseInput checks raw against the request schema and returns the parsed
// URL. The URL must carry a scheme and a host.
func ParseInput(raw string) (*url.URL, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(map[string]any{"url": raw}))
	if err != nil {
		return nil, newFieldError("url", err.Error())
	}
	if !result.Valid() {
		return nil, newFieldError("url", InvalidURLMessage)
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, newFieldError("url", InvalidURLMessage)
	}
	return u, nil
}
