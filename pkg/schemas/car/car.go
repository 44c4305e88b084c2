// Package car declares the "car" document type.
package car

import "github.com/goliatone/go-docschema/pkg/schema"

// Name identifies the document type.
const Name = "car"

// Field paths, relative to the document root.
const (
	FieldName         = "name"
	FieldType         = "type"
	FieldSpecs        = "specs"
	FieldFuel         = "specs.fuel"
	FieldTransmission = "specs.transmission"
	FieldCapacity     = "specs.capacity"
	FieldPrice        = "price"
	FieldOldPrice     = "oldPrice"
	FieldIsFavorite   = "isFavorite"
	FieldImage        = "image"
)

var descriptor = schema.Document(Name, "Car",
	schema.String("name", "Name"),
	schema.String("type", "Type"),
	schema.Object("specs", "Specifications",
		schema.Number("fuel", "Fuel Capacity"),
		schema.String("transmission", "Transmission"),
		schema.Number("capacity", "Passenger Capacity"),
	),
	schema.Number("price", "Price"),
	schema.Number("oldPrice", "Old Price"),
	schema.Boolean("isFavorite", "Is Favorite"),
	schema.Image("image", "Image",
		schema.WithOption(schema.OptionHotspot, true),
	),
)

// Schema returns the car document tree. Every call hands out an independent
// copy so the package-level declaration cannot be mutated through it.
func Schema() schema.FieldDescriptor {
	return descriptor.Clone()
}
