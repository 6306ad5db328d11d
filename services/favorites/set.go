package favorites

import "slices"

// Set holds product uids without duplicates, in the order they were added.
type Set struct {
	uids []string
}

func NewSet(uids ...string) Set {
	s := Set{}
	for _, uid := range uids {
		s = s.Add(uid)
	}
	return s
}

func (s Set) Contains(uid string) bool {
	return slices.Contains(s.uids, uid)
}

func (s Set) Add(uid string) Set {
	if s.Contains(uid) {
		return s
	}
	return Set{uids: append(slices.Clone(s.uids), uid)}
}

func (s Set) Remove(uid string) Set {
	return Set{uids: slices.DeleteFunc(slices.Clone(s.uids), func(candidate string) bool {
		return candidate == uid
	})}
}

func (s Set) Len() int {
	return len(s.uids)
}

func (s Set) UIDs() []string {
	uids := slices.Clone(s.uids)
	if uids == nil {
		return []string{}
	}
	return uids
}
