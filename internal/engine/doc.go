// Package engine interprets the declarative screen model that drives the
// settings UI.
//
// Loading:
//   - ParseModel decodes YAML or JSON into typed screens and effects.
//   - ExpandModel folds base types into every screen that names one, once,
//     at load time.
//   - Validate checks every reachable navigate target, rotation target,
//     condition variable, formatter modifier and custom effect name, and
//     reports all problems at once.
//
// Running:
//   - Run asks the Host for its components and a SectionFactory, then loops:
//     the active Section draws a Frame through its Drawer and blocks for one
//     key, and the Resolver turns any requested chain into an Outcome.
//   - Outcomes push or pop the history stack, open inline screens under the
//     @temporary id, clear the drawer, or end the session with an Exit.
//
// The Store is owned by the goroutine calling Run. Host callbacks run on that
// goroutine too and may mutate it through the UI interface.
package engine
