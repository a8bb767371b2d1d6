// Package accessor resolves a container call into exactly one read or write.
//
// Call arguments are parsed once into a tagged Request. Behaviors register
// named processors on the accessor's pipeline; the first processor that
// recognizes the request performs it, stores the result and aborts. The
// single-value behavior is registered first and acts as the terminal
// fallback, while key and index behaviors insert themselves before it:
//
//	get-state-as-key-value-accessor
//	get-state-as-single-accessor
//	set-state-as-key-value-accessor
//	set-state-as-single-accessor
//
// A request nobody resolves is logged as a warning and yields nil.
package accessor
