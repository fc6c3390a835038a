// Package zap backs the lib-fluent log.Logger contract with go.uber.org/zap.
package zap
