package auth

// CanModify decides whether an authenticated actor may mutate or delete a
// resource. Resources without an owner reference predate authentication and
// are writable by any authenticated user; owned resources are writable only
// by their owner.
//
// Every mutation path for todos, articles, and comments must go through this
// one predicate. Callers enforce "actor is authenticated" before calling;
// unauthenticated requests are rejected upstream and never reach it.
func CanModify(ownerID *int64, actorID int64) bool {
	if ownerID == nil {
		return true
	}
	return *ownerID == actorID
}
