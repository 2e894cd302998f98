package resolver

import "time"

// Copy stages a copy of the subtree at src below destParent, keeping the
// source name. It fails without staging anything when the source is missing
// (ErrNotFound), the destination parent is missing (ErrParentMissing), the
// target is already visible (ErrAlreadyExists), or the target lies inside
// the source (ErrInvalidPath).
func (s *Session) Copy(src, destParent string) (Resource, error) {
	const op = "copy"
	start := time.Now()
	dest, snapshot, err := s.prepareCopy(op, src, destParent)
	if err != nil {
		s.observer.OnError(op, src, err)
		return nil, err
	}
	s.stageSubtree(snapshot, start)
	s.logger.Debug("subtree copied", "op", op, "from", snapshot[0].path, "to", dest, "resources", len(snapshot))
	r, _ := s.Get(dest)
	return r, nil
}

// Move is Copy followed by a Delete of src. Both are staged together; on
// error nothing is staged.
func (s *Session) Move(src, destParent string) (Resource, error) {
	const op = "move"
	start := time.Now()
	dest, snapshot, err := s.prepareCopy(op, src, destParent)
	if err != nil {
		s.observer.OnError(op, src, err)
		return nil, err
	}
	s.stageSubtree(snapshot, start)
	from := snapshot[0].srcPath
	n := s.tombstone(from)
	s.observer.OnDelete(from, n, time.Since(start))
	s.logger.Debug("subtree moved", "op", op, "from", from, "to", dest, "resources", len(snapshot))
	r, _ := s.Get(dest)
	return r, nil
}

type copyEntry struct {
	srcPath string
	path    string
	props   Properties
}

// prepareCopy validates a copy or move and snapshots the source subtree,
// parents first, with destination paths already computed.
func (s *Session) prepareCopy(op, src, destParent string) (string, []copyEntry, error) {
	if s.Closed() {
		return "", nil, pathErr(op, src, ErrSessionClosed)
	}
	srcNorm, ok := NormalizePath(src)
	if !ok {
		return "", nil, pathErr(op, src, ErrInvalidPath)
	}
	root, ok := s.node(srcNorm)
	if !ok {
		return "", nil, pathErr(op, srcNorm, ErrNotFound)
	}
	if root.path == "/" {
		return "", nil, pathErr(op, root.path, ErrInvalidPath)
	}
	destNorm, ok := NormalizePath(destParent)
	if !ok {
		return "", nil, pathErr(op, destParent, ErrInvalidPath)
	}
	parent, ok := s.node(destNorm)
	if !ok {
		return "", nil, pathErr(op, destNorm, ErrParentMissing)
	}

	dest := ChildPath(parent.path, root.Name())
	if _, ok := s.visible(dest); ok {
		return "", nil, pathErr(op, dest, ErrAlreadyExists)
	}
	if IsDescendant(root.path, dest) {
		return "", nil, pathErr(op, dest, ErrInvalidPath)
	}

	var snapshot []copyEntry
	for r := range s.Walk(root.path) {
		n, ok := r.(*Node)
		if !ok {
			continue
		}
		snapshot = append(snapshot, copyEntry{
			srcPath: n.path,
			path:    dest + n.path[len(root.path):],
			props:   n.props.Clone(),
		})
	}
	return dest, snapshot, nil
}

func (s *Session) stageSubtree(snapshot []copyEntry, start time.Time) {
	for _, e := range snapshot {
		s.tombstones.Delete(e.path)
		s.staged.Set(e.path, e.props)
		s.observer.OnCreate(e.path, time.Since(start))
	}
}
