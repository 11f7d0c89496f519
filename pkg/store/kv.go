package store

// KV is the string key/value backend the vote store persists through.
type KV interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool, error)
	// Apply executes all ops atomically.
	Apply(ops ...Op) error
}

// Op is a single write applied by KV.Apply.
type Op struct {
	Key    string
	Value  string
	Delete bool
}

// Set stores value under key.
func Set(key, value string) Op {
	return Op{Key: key, Value: value}
}

// Remove deletes key.
func Remove(key string) Op {
	return Op{Key: key, Delete: true}
}

func applyTo(m map[string]string, ops []Op) {
	for _, op := range ops {
		if op.Delete {
			delete(m, op.Key)
			continue
		}
		m[op.Key] = op.Value
	}
}
