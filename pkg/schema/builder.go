package schema

// FieldOption mutates a descriptor while it is being declared.
type FieldOption func(*FieldDescriptor)

// WithOption sets a single option. Unsupported values panic: declarations are
// static and a bad literal is a programming error.
func WithOption(key string, value any) FieldOption {
	return func(d *FieldDescriptor) {
		v, err := OptionOf(value)
		if err != nil {
			panic(err)
		}
		if d.Options == nil {
			d.Options = make(Options)
		}
		d.Options[key] = v
	}
}

// WithOptions merges a whole bag into the descriptor.
func WithOptions(opts Options) FieldOption {
	return func(d *FieldDescriptor) {
		if len(opts) == 0 {
			return
		}
		if d.Options == nil {
			d.Options = make(Options, len(opts))
		}
		for k, v := range opts {
			d.Options[k] = v
		}
	}
}

// Document declares a document type root.
func Document(name, title string, fields ...FieldDescriptor) FieldDescriptor {
	return FieldDescriptor{Name: name, Title: title, Type: TypeDocument, Fields: fields}
}

// Object declares a composite field owning its children.
func Object(name, title string, fields ...FieldDescriptor) FieldDescriptor {
	return FieldDescriptor{Name: name, Title: title, Type: TypeObject, Fields: fields}
}

// String declares a text field.
func String(name, title string, opts ...FieldOption) FieldDescriptor {
	return leaf(name, title, TypeString, opts)
}

// Number declares a numeric field.
func Number(name, title string, opts ...FieldOption) FieldDescriptor {
	return leaf(name, title, TypeNumber, opts)
}

// Boolean declares a true/false field.
func Boolean(name, title string, opts ...FieldOption) FieldDescriptor {
	return leaf(name, title, TypeBoolean, opts)
}

// Image declares an image asset field.
func Image(name, title string, opts ...FieldOption) FieldDescriptor {
	return leaf(name, title, TypeImage, opts)
}

func leaf(name, title string, typ FieldType, opts []FieldOption) FieldDescriptor {
	d := FieldDescriptor{Name: name, Title: title, Type: typ}
	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}
	return d
}
