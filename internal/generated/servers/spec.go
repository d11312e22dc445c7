package servers

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yml
var swaggerSpec []byte

// GetSwagger loads the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	swagger, err := openapi3.NewLoader().LoadFromData(swaggerSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}
