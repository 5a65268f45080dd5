// Package tiny implements the tinyscript evaluation runtime. Programs arrive
// as already-parsed trees (the parser is an external collaborator, see
// DecodeProgram for its JSON interchange form) and execute under explicit
// limits. The runtime provides:
//   - Values: null, bool, int, float, string, list, dict, instance, function.
//     Lists, dicts, and instances are reference types; aliases observe
//     mutation through any path that reaches the same container.
//   - Classes with ordered method tables; `new` builds an instance and
//     invokes an optional `constructor` method.
//   - Chained member paths (a.b.c.d) that read and write nested containers
//     in place. Missing intermediate segments are errors, never auto-created.
//   - Three-mode call dispatch: bare names resolve against the enclosing
//     class, instance-qualified calls bind self, class-qualified calls run
//     without self.
//   - assert as the sole pass/fail mechanism. Every failure surfaces as a
//     *RuntimeError carrying a kind, a source position, the active call
//     frames, and a caret code frame when program source is available.
//
// The interpreter enforces a recursion cap and an optional step quota, and
// checks context cancellation between steps.
package tiny
