// Package workers runs producer and consumer goroutines against a shared
// boundedqueue.Queue and manages the shutdown hand-off between them.
//
// A Group tracks its producers and consumers separately. Wait joins the
// producers first, then calls Finish on the queue exactly once, then joins
// the consumers, which drain the remaining items and stop when they observe
// end-of-stream. This automates the queue's shutdown contract: Finish is
// called after the last Push, and never twice with producers still running.
//
// Task errors are collected rather than cancelling siblings; Wait returns
// them joined via errors.Join. Cancelling the Group's context stops blocked
// consumers via the queue's context-aware Pop.
package workers
