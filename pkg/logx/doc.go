// Package logx configures netpulse's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep:
//   - Console output readable (short timestamp + short caller)
//   - Optional file output JSON-structured
package logx
