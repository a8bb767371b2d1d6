// Package pipeline implements the ordered, abortable handler chain every
// syren component is built on.
//
// A Chain holds named processors. New processors are appended unless their
// AddOptions name a target to insert Before, After or Instead of; a target
// that does not exist falls back to append. Run threads one mutable argument
// through the processors in order and hands each of them the same *API: once
// a processor calls Abort, no later processor of that Run executes, while the
// processor that aborted always completes.
//
// Pipeline wraps a Chain with request/response mappers so a call's
// parameters can be turned into the shared argument and the argument back
// into a result:
//
//	get := pipeline.NewMapped(
//	    func(struct{}) *Lookup { return &Lookup{} },
//	    func(l *Lookup) int { return l.Value },
//	)
//	get.Add(pipeline.AddOptions[*Lookup]{Name: "from-cache", Handle: fromCache})
//	get.Add(pipeline.AddOptions[*Lookup]{Name: "from-disk", Handle: fromDisk})
//	v := get.Run(struct{}{})
package pipeline
