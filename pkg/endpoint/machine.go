package endpoint

// Machine owns a State for the duration of one capture session.
// It is not safe for concurrent use.
type Machine struct {
	Config Config
	state  State
}

func NewMachine(cfg Config) *Machine {
	return &Machine{Config: cfg}
}

func (m *Machine) Feed(c Classification) Decision {
	var d Decision
	m.state, d = Transition(m.Config, m.state, c)
	return d
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) Phase() Phase {
	return m.state.Phase
}

func (m *Machine) Finished() bool {
	return m.state.Finished
}

func (m *Machine) Reset() {
	m.state = State{}
}
