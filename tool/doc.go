// Package tool provides the tool registry and invocation dispatcher.
//
// A [Registry] maps tool names to definitions and execution targets. A
// target is either a local [Handler] or a remote HTTP endpoint; remote
// tools are typically discovered from a catalog server with
// [AttachCatalog]. Registration is last-write-wins: registering a name
// that already exists silently replaces the prior entry.
//
// A [Dispatcher] executes model-issued tool calls against the registry.
// Dispatch failures are captured into the returned result rather than
// raised, which is what keeps an agent run alive through individual tool
// failures.
package tool
