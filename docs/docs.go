// Package docs holds the OpenAPI description served under /swagger.
// It follows the layout produced by `swag init -g cmd/api/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/addresses/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["addresses"],
                "summary": "List addresses within a radius",
                "parameters": [
                    {"type": "number", "description": "Reference latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Reference longitude", "name": "lon", "in": "query", "required": true},
                    {"type": "number", "description": "Radius in kilometers", "name": "distance", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Address"}}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["addresses"],
                "summary": "Create an address",
                "parameters": [
                    {"description": "Address", "name": "address", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.AddressInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Address"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/addresses/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["addresses"],
                "summary": "Get an address",
                "parameters": [
                    {"type": "integer", "description": "Address ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Address"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["addresses"],
                "summary": "Update an address",
                "parameters": [
                    {"type": "integer", "description": "Address ID", "name": "id", "in": "path", "required": true},
                    {"description": "Address", "name": "address", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.AddressInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Address"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["addresses"],
                "summary": "Delete an address",
                "parameters": [
                    {"type": "integer", "description": "Address ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Address"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "field": {"type": "string"}
            }
        },
        "models.Address": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "models.AddressInput": {
            "type": "object",
            "required": ["name", "latitude", "longitude"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "latitude": {"type": "number", "minimum": -90, "maximum": 90},
                "longitude": {"type": "number", "minimum": -180, "maximum": 180}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Address API",
	Description:      "Stores named geographic points and answers radius queries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
