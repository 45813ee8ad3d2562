package nudge

type mockNotifier struct {
	called    bool
	titles    []string
	hoursLeft int
	err       error
}

func (m *mockNotifier) SendNudge(titles []string, hoursLeft int) error {
	m.called = true
	m.titles = titles
	m.hoursLeft = hoursLeft
	return m.err
}
