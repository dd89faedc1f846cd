// Package errors provides coded, actionable error messages for smallie.
//
// Every error the template binder, the live server, the configuration
// loader and the snapshot stores report to a user carries:
//   - A unique code (e.g., "E001") with a short message and an explanation
//   - An optional source location, with surrounding lines when readable
//   - An optional hint
//   - A documentation URL
//
// # Error Categories
//
// Errors are organized into categories:
//   - template: markup that cannot be parsed or bound
//   - runtime: failures while handling an event
//   - protocol: WebSocket and message errors
//   - config: smallie.json problems
//   - storage: snapshot store problems
//   - cli: command line usage errors
//
// # Usage
//
//	err := errors.New("E001").
//	    WithCaller(1).
//	    WithSuggestion("Bind the whole attribute: class=${cls}")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Template slot count mismatch
//	//
//	//   internal/demo/todo/app.go:42
//	//   ...
//	//
//	//   Hint: Bind the whole attribute: class=${cls}
//	//
//	//   Learn more: https://smallie.dev/docs/errors/E001
package errors
