package model

import internalmodel "github.com/goliatone/go-docschema/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeObject  = internalmodel.FieldTypeObject
	FieldTypeImage   = internalmodel.FieldTypeImage
)

const (
	ValidationRuleMin       = internalmodel.ValidationRuleMin
	ValidationRuleMax       = internalmodel.ValidationRuleMax
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength

	MetadataDocumentType = internalmodel.MetadataDocumentType
	MetadataImageHotspot = internalmodel.MetadataImageHotspot
	MetadataImagePart    = internalmodel.MetadataImagePart
	MetadataOptionPrefix = internalmodel.MetadataOptionPrefix

	ImageAsset   = internalmodel.ImageAsset
	ImageRef     = internalmodel.ImageRef
	ImageHotspot = internalmodel.ImageHotspot
	ImageCrop    = internalmodel.ImageCrop
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel

// DefaultLabeler is the label fallback used for untitled descriptors.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}
