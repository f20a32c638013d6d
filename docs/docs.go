// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g main.go
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
        "/api/data": {
            "get": {
                "description": "Returns the stored dashboard Document as written by the last save or ingestion",
                "produces": ["application/json"],
                "tags": ["data"],
                "summary": "Get the dashboard document",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Stores the request body as the new dashboard Document. The body must be a JSON object.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["data"],
                "summary": "Replace the dashboard document",
                "parameters": [
                    {"description": "Dashboard document", "name": "document", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SaveResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/archives": {
            "get": {
                "description": "Returns the blob keys of every archive stored by a non-dry-run upload",
                "produces": ["application/json"],
                "tags": ["data"],
                "summary": "List ingested archives",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/upload": {
            "post": {
                "description": "Runs the ingestion pipeline on the uploaded archive against the stored Document.\nWith dry_run=true the merged Document is returned without being saved.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["upload"],
                "summary": "Ingest a zip of fund extracts",
                "parameters": [
                    {"type": "file", "description": "Zip archive with nav.csv, metrics.csv, performance_ratio.csv, asset_class_exposure.csv, balance.csv", "name": "file", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Return the merge result without saving it", "name": "dry_run", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.IngestResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/upload-pdf": {
            "post": {
                "description": "Stores the raw request body under documents/<filename>, replacing any previous file",
                "consumes": ["application/pdf"],
                "produces": ["application/json"],
                "tags": ["upload"],
                "summary": "Upload a PDF document",
                "parameters": [
                    {"type": "string", "default": "newsletter.pdf", "description": "Target file name", "name": "filename", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SaveResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/files/{key}": {
            "get": {
                "description": "Serves any stored blob (archives, PDF documents, the Document itself) with its content type",
                "produces": ["application/octet-stream"],
                "tags": ["files"],
                "summary": "Download a stored file",
                "parameters": [
                    {"type": "string", "description": "Blob key, e.g. documents/newsletter.pdf", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.IngestResponse": {
            "type": "object",
            "properties": {
                "archive_key": {"type": "string"},
                "document": {"type": "object"},
                "dry_run": {"type": "boolean"},
                "extracts": {"type": "array", "items": {"type": "string"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        },
        "models.SaveResponse": {
            "type": "object",
            "properties": {
                "content_type": {"type": "string"},
                "key": {"type": "string"},
                "size": {"type": "integer"},
                "updated_at": {"type": "string"}
            }
        },
        "models.Warning": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
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
	Title:            "Fund Dashboard API",
	Description:      "Dashboard state storage and ingestion of fund CSV extracts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
