package schema

// produce returns the field a copy should claim in place of f. The field is
// cloned when it is still owned (it belongs to the source of the copy) or
// when any override record applies to it, later records winning. A detached
// field with no overrides is reused as-is.
func produce(f Field, overrides ...*Params) (Field, error) {
	if f == nil {
		return nil, nil
	}
	params, applies := merged(overrides...)
	if f.Owner() == nil && !applies {
		return f, nil
	}
	return f.Copy(WithParams(params))
}

// reproduce resolves a nested field slot of a composite copy: a supplied
// replacement takes the place of the current field, and whichever is used
// goes through produce with the slot's override record.
func reproduce(current, replacement Field, params *Params) (Field, error) {
	if replacement != nil {
		return produce(replacement, params)
	}
	return produce(current, params)
}

// claimNested claims each non-nil field for owner with the matching role.
func claimNested(owner Field, slots ...nestedSlot) error {
	for _, slot := range slots {
		if slot.field == nil {
			continue
		}
		if err := owner.Claim(slot.field, slot.role); err != nil {
			return err
		}
	}
	return nil
}

type nestedSlot struct {
	field Field
	role  Role
}
