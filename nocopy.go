package sux

// noCopy may be embedded in structs that must not be copied after first
// use. It has no state; its only purpose is to trip `go vet`'s copylocks
// check.
//
// See https://golang.org/issues/8005#issuecomment-190753527 for details.
// Must not be embedded (only included as a named field), since Lock and
// Unlock would otherwise satisfy sync.Locker on the containing type.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
