package gen

import "github.com/mvniekerk/uniffi-bindgen-java/model"

// Primitive descriptors. Signed and unsigned kinds of the same width share
// a descriptor: Java has no unsigned primitives, so both travel in the
// signed type.

type int8CodeType struct{}

func (int8CodeType) TypeLabel(*model.ComponentInterface, *Config) string { return "Byte" }
func (int8CodeType) CanonicalName() string                               { return "Byte" }

type int16CodeType struct{}

func (int16CodeType) TypeLabel(*model.ComponentInterface, *Config) string { return "Short" }
func (int16CodeType) CanonicalName() string                               { return "Short" }

type int32CodeType struct{}

func (int32CodeType) TypeLabel(*model.ComponentInterface, *Config) string { return "Integer" }
func (int32CodeType) CanonicalName() string                               { return "Integer" }

type int64CodeType struct{}

func (int64CodeType) TypeLabel(*model.ComponentInterface, *Config) string { return "Long" }
func (int64CodeType) CanonicalName() string                               { return "Long" }

type float32CodeType struct{}

func (float32CodeType) TypeLabel(*model.ComponentInterface, *Config) string { return "Float" }
func (float32CodeType) CanonicalName() string                               { return "Float" }

type float64CodeType struct{}

func (float64CodeType) TypeLabel(*model.ComponentInterface, *Config) string { return "Double" }
func (float64CodeType) CanonicalName() string                               { return "Double" }

type booleanCodeType struct{}

func (booleanCodeType) TypeLabel(*model.ComponentInterface, *Config) string { return "Boolean" }
func (booleanCodeType) CanonicalName() string                               { return "Boolean" }

type stringCodeType struct{}

func (stringCodeType) TypeLabel(*model.ComponentInterface, *Config) string { return "String" }
func (stringCodeType) CanonicalName() string                               { return "String" }

type bytesCodeType struct{}

func (bytesCodeType) TypeLabel(*model.ComponentInterface, *Config) string { return "byte[]" }
func (bytesCodeType) CanonicalName() string                               { return "ByteArray" }

type timestampCodeType struct{}

func (timestampCodeType) TypeLabel(*model.ComponentInterface, *Config) string { return "Instant" }
func (timestampCodeType) CanonicalName() string                               { return "Timestamp" }
func (timestampCodeType) Imports(*Config) []string                            { return []string{"java.time.Instant"} }

type durationCodeType struct{}

func (durationCodeType) TypeLabel(*model.ComponentInterface, *Config) string { return "Duration" }
func (durationCodeType) CanonicalName() string                               { return "Duration" }
func (durationCodeType) Imports(*Config) []string                            { return []string{"java.time.Duration"} }
