// Package services implements the business logic layer between the HTTP
// handlers and the dataset pipeline. It owns the loaded dataset snapshot,
// filter parsing and validation, dashboard assembly, and exports.
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. Domain-focused methods that encapsulate business rules
//
// The dataset snapshot is swapped atomically on reload so request handlers
// always read a consistent dataset without locking across a whole request.
package services
