package protocol

// Capability names reported by the check command.
const (
	CapTransport = "transport"
	CapParser    = "html-parser"
	CapRenderer  = "markdown-renderer"
)

// Registry records which injected capabilities are available. Probing
// happens once at startup; the check command reads the recorded state.
type Registry struct {
	order []string
	state map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{state: make(map[string]bool)}
}

// Register records a capability probe outcome.
func (r *Registry) Register(name string, available bool) {
	if _, ok := r.state[name]; !ok {
		r.order = append(r.order, name)
	}
	r.state[name] = available
}

// Missing lists unavailable capabilities in registration order.
func (r *Registry) Missing() []string {
	var missing []string
	for _, name := range r.order {
		if !r.state[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
