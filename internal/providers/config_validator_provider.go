package providers

import (
	"errors"
	"github.com/gookit/validate"
	"qrscan/internal/structures"
)

var (
	ErrMongoURLRequired      = errors.New("mongo.url is required for the mongo storage driver")
	ErrMongoDatabaseRequired = errors.New("mongo.database is required for the mongo storage driver")
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks struct tag rules first, then the cross-section rules
// that tags cannot express.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	if cv.conf.Storage.Driver == "mongo" {
		if cv.conf.Mongo.URL == "" {
			return ErrMongoURLRequired
		}
		if cv.conf.Mongo.Database == "" {
			return ErrMongoDatabaseRequired
		}
	}
	return nil
}
