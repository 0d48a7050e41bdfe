// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package httpapi exposes the chain validator over HTTP.
//
// Routes:
//
//	POST /api/v1/validate   {"url": "https://example.com"}
//	GET  /health
//	GET  /metrics           Prometheus exposition
//
// A completed validation answers 200 with {"valid":..,"certificates":[..]},
// whatever the verdict. Failures answer with the error envelope
// {"errors":{"formErrors":[..],"fieldErrors":{..}}}:
//
//	400  malformed body or URL
//	422  the host presented a certificate that does not decode
//	502  the chain could not be retrieved from the host
//	500  anything else
package httpapi
