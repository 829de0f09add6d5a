package location

// AddAlias appends s to the alias list.
func (l *Location) AddAlias(s string) {
	l.Aliases = append(l.Aliases, s)
}

// Alias returns the alias at index. An out-of-range index returns "" and an
// *IndexError.
func (l *Location) Alias(index int) (string, error) {
	if err := l.checkAlias("alias", index); err != nil {
		return "", err
	}
	return l.Aliases[index], nil
}

// SetAlias replaces the alias at index. An out-of-range index leaves the list
// untouched and returns an *IndexError.
func (l *Location) SetAlias(index int, s string) error {
	if err := l.checkAlias("set alias", index); err != nil {
		return err
	}
	l.Aliases[index] = s
	return nil
}

// RemoveAlias deletes and returns the alias at index, preserving the order of
// the remaining aliases. An out-of-range index returns "" and an *IndexError.
func (l *Location) RemoveAlias(index int) (string, error) {
	if err := l.checkAlias("remove alias", index); err != nil {
		return "", err
	}
	removed := l.Aliases[index]
	l.Aliases = append(l.Aliases[:index], l.Aliases[index+1:]...)
	return removed, nil
}

func (l *Location) checkAlias(op string, index int) error {
	if index < 0 || index >= len(l.Aliases) {
		return &IndexError{LocationID: l.ID, Op: op, Index: index, Len: len(l.Aliases)}
	}
	return nil
}
