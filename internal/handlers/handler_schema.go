package handlers

import (
	"net/http"
	"reflect"

	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// DocumentSchema describes the body accepted by POST /documents.
func DocumentSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		// Decimals travel as JSON numbers.
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == decimalType {
				return &jsonschema.Schema{Type: "number"}
			}
			return nil
		},
	}
	schema := r.Reflect(&dto.CreateDocumentRequest{})
	schema.Title = "AccountingDocument"
	schema.Description = "An accounting document submitted for storage and posting."
	return schema
}

func registerSchemaRoutes(rg *gin.RouterGroup) {
	schema := DocumentSchema()
	rg.GET("/schemas/document", func(c *gin.Context) {
		c.JSON(http.StatusOK, schema)
	})
}
