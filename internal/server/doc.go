// Package server exposes the calculators over HTTP.
//
// Endpoints:
//
//	GET|POST /ackermann?m=&n=&algo=iterative|recursive
//	GET|POST /fibonacci?n=&algo=linear|doubling|recursive
//	GET      /health
//	GET      /metrics
//
// The form field names of the original web pages (ack_param_m,
// ack_param_n, ack_algorithm_choice, fib_param_n, fib_algorithm_choice)
// are accepted as aliases. Responses are JSON. Non-integer input yields
// 400, requests over a limit 422 and calculations exceeding the timeout
// 504.
package server
