package schema

// Basic is the generic field kind: values pass through unchanged.
type Basic struct {
	base
}

func NewBasic(options ...Option) (*Basic, error) {
	return newBasic(collect(options))
}

func newBasic(p Params) (*Basic, error) {
	f := &Basic{}
	if err := f.init(f, KindBasic, kindDefaults{}, p); err != nil {
		return nil, err
	}
	return f, nil
}
