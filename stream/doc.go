// Package stream provides a streaming JSON writer with explicit stack
// management.
//
// # Overview
//
// A [Writer] emits JSON text directly to an io.Writer as its methods are
// called. The structure being written is tracked on an explicit stack of
// [Context] values, so that separators, indentation and nesting are derived
// from the stack alone and misuse is detected as soon as it happens:
//
//	w := stream.NewWriter(out, stream.WithIndent("  "))
//	w.StartObject().
//		Key("model").Value(key.MustParse("block/stone")).
//		Key("x").Value(90).
//		EndObject()
//	if err := w.Finish(); err != nil {
//		return err
//	}
//
// # Errors
//
// Structural misuse (closing the wrong bracket, two keys in a row, a key
// outside an object, a value directly inside an object) and I/O failures are
// recorded in the writer rather than returned from each call. Once an error is
// recorded every later call is a no-op, and the error is reported by
// [Writer.Err] and [Writer.Finish]. Structural errors wrap [ErrNesting].
//
// # Output
//
// With an empty indent the output is compact. With a non-empty indent every
// element starts on its own line, indented by the indent string once per
// nesting depth, and keys are separated from values by ": ".
//
// Integral floating point values are written without a fractional part and
// key.Key values omit the default namespace. A Writer may be used for several
// consecutive top-level documents; they are concatenated without separator.
package stream
