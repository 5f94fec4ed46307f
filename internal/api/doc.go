// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the cost prediction backend.
//
// All endpoints exchange JSON over a single base URL: POST /api/predict,
// POST /api/chat, GET /api/statistics, and GET /api/visualizations.
//
// # Key Types
//
//   - Client: HTTP client for the backend with a typed error taxonomy
//   - PredictionRequest: flat form record posted for a cost estimate
//   - PredictionResponse: estimate, per-model estimates, cost explanation
//   - ChatRequest/ChatResponse: one question/answer turn
//   - VisualizationData: the six named chart datasets
//
// # Error semantics
//
// Application-level failures (the backend answered with success=false) are
// returned as ordinary responses so callers can show the server-supplied
// message inline. A non-nil error always means a transport-class failure:
// unreachable backend, timeout, or an undecodable body. Use IsUnreachable,
// IsTimeout, and IsInvalidResponse to branch.
//
// # Usage
//
//	client := api.NewClient()
//	resp, err := client.Predict(ctx, req)
//	if err != nil {
//	    // connection-failure path: backend down or talking garbage
//	}
//	if !resp.Success {
//	    // inline application error: resp.Error
//	}
package api
