package domain

// DefaultCounterName is used when a counter is added without a name.
const DefaultCounterName = "מונה חדש"

// Counter is a running tally of arrivals for one organization.
type Counter struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DefaultCounters returns the seed counters used for a fresh or reset state.
func DefaultCounters() []Counter {
	return []Counter{
		{Name: "WFP", Value: 0},
		{Name: "סקטור", Value: 0},
		{Name: "WCK", Value: 0},
	}
}

// CounterTotal sums the values of all counters.
func CounterTotal(counters []Counter) int {
	total := 0
	for _, c := range counters {
		total += c.Value
	}
	return total
}

// CounterPatch carries the fields of a counter update. Nil fields are left as they are.
type CounterPatch struct {
	Name  *string
	Value *int
}

// ShareMessage is the arrivals summary prepared for sending to a chat app.
type ShareMessage struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}
