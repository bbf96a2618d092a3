package main

// playerStore is the local mirror of every player and avatar definition the
// server has told us about. It is only ever touched from the game loop
// goroutine; network reads hand messages over through a channel first, so
// no locking is needed here.
type playerStore struct {
	players map[string]Player
	avatars map[string]Avatar
}

func newPlayerStore() *playerStore {
	return &playerStore{
		players: make(map[string]Player),
		avatars: make(map[string]Avatar),
	}
}

// applyFullSnapshot replaces both mappings wholesale. Used on join success.
func (st *playerStore) applyFullSnapshot(players map[string]Player, avatars map[string]Avatar) {
	st.players = make(map[string]Player, len(players))
	for id, p := range players {
		st.players[id] = p
	}
	st.avatars = make(map[string]Avatar, len(avatars))
	for name, a := range avatars {
		st.avatars[name] = a
	}
}

func (st *playerStore) upsertPlayer(p Player) {
	st.players[p.ID] = p
}

// registerAvatarIfAbsent adds an avatar definition the first time its name
// is seen. Definitions are immutable once registered.
func (st *playerStore) registerAvatarIfAbsent(a Avatar) {
	if _, ok := st.avatars[a.Name]; ok {
		return
	}
	st.avatars[a.Name] = a
}

// mergePositions overwrites only the entries present in the partial
// mapping, leaving everyone else untouched.
func (st *playerStore) mergePositions(partial map[string]Player) {
	for id, p := range partial {
		st.players[id] = p
	}
}

func (st *playerStore) remove(id string) {
	delete(st.players, id)
}

func (st *playerStore) get(id string) (Player, bool) {
	p, ok := st.players[id]
	return p, ok
}

func (st *playerStore) avatar(name string) (Avatar, bool) {
	a, ok := st.avatars[name]
	return a, ok
}

func (st *playerStore) count() int {
	return len(st.players)
}

// displayName returns the label drawn above a player. When several players
// share a username the trailing characters of the id are appended so the
// labels stay distinct: "Tim (abcd)". A lone "Tim" stays plain.
func (st *playerStore) displayName(p Player) string {
	dupes := 0
	for _, other := range st.players {
		if other.Username == p.Username {
			dupes++
			if dupes > 1 {
				break
			}
		}
	}
	if dupes <= 1 {
		return p.Username
	}
	suffix := p.ID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return p.Username + " (" + suffix + ")"
}
