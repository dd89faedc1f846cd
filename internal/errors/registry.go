package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Template errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryTemplate,
		Message:  "Template slot count mismatch",
		Detail:   "The number of interpolation slots found in the parsed markup differs from the number of template parts. A value placed inside a larger attribute value (class=\"a ${x}\"), inside a comment, or inside a raw text element cannot be bound.",
		DocURL:   "https://smallie.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryTemplate,
		Message:  "Template parse failed",
		Detail:   "The joined template markup could not be parsed as HTML.",
		DocURL:   "https://smallie.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryTemplate,
		Message:  "Template value count mismatch",
		Detail:   "A template with N+1 literal parts needs exactly N values.",
		DocURL:   "https://smallie.dev/docs/errors/E003",
	},

	// ============================================
	// Runtime errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryRuntime,
		Message:  "Event handler panicked",
		Detail:   "An event handler or an effect it triggered panicked while the event was dispatched.",
		DocURL:   "https://smallie.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryRuntime,
		Message:  "Unknown node",
		Detail:   "An event referenced a node id that the session does not know. The node may have been removed by an earlier patch.",
		DocURL:   "https://smallie.dev/docs/errors/E021",
	},

	// ============================================
	// Protocol errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryProtocol,
		Message:  "WebSocket upgrade failed",
		Detail:   "The HTTP connection could not be upgraded to a WebSocket.",
		DocURL:   "https://smallie.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryProtocol,
		Message:  "Invalid client message",
		Detail:   "A message from the browser could not be decoded.",
		DocURL:   "https://smallie.dev/docs/errors/E061",
	},
	"E062": {
		Category: CategoryProtocol,
		Message:  "Session limit reached",
		Detail:   "The server refused a new session because the configured maximum is already open.",
		DocURL:   "https://smallie.dev/docs/errors/E062",
	},

	// ============================================
	// Config errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   "https://smallie.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
		Detail:   "No smallie.json was found; defaults are in effect.",
		DocURL:   "https://smallie.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The configured port is outside 0-65535.",
		DocURL:   "https://smallie.dev/docs/errors/E122",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Invalid duration",
		Detail:   "A duration setting could not be parsed (expected a Go duration such as \"30s\").",
		DocURL:   "https://smallie.dev/docs/errors/E123",
	},
	"E124": {
		Category: CategoryConfig,
		Message:  "Invalid log setting",
		Detail:   "The log level must be debug, info, warn or error and the format text or json.",
		DocURL:   "https://smallie.dev/docs/errors/E124",
	},

	// ============================================
	// Storage errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryStorage,
		Message:  "Unknown snapshot driver",
		Detail:   "The snapshot driver must be \"file\" or \"s3\".",
		DocURL:   "https://smallie.dev/docs/errors/E140",
	},
	"E141": {
		Category: CategoryStorage,
		Message:  "Snapshot write failed",
		Detail:   "The rendered snapshot could not be stored.",
		DocURL:   "https://smallie.dev/docs/errors/E141",
	},
	"E142": {
		Category: CategoryStorage,
		Message:  "Snapshot store misconfigured",
		Detail:   "A required snapshot setting (directory or bucket) is missing.",
		DocURL:   "https://smallie.dev/docs/errors/E142",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
