// Package trace records what a rex run did: which command ran, which
// directory was walked and how every file was scanned.
//
// Events come in three scopes. ScopeCommand covers one CLI command,
// ScopeDir one directory walk and ScopeFile the load and scan of a single
// source. The level picks how deep the trace goes:
//
//	off     nothing
//	error   events are kept only for the failure dump
//	phase   command and directory spans
//	detail  per-file spans with token and diagnostic counts
//	debug   everything, including log records
//
// A tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, t)
//	ctx, span := trace.Begin(ctx, trace.ScopeFile, "scan")
//	defer span.End()
//	span.SetFile(path).SetCounts(len(tokens), bag.Len())
package trace
