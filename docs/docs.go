// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/auth": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/controllers.CredentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TokenPair"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "wrong credentials | wrong username or password", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/v1/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh tokens",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.RefreshRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TokenPair"}},
                    "401": {"description": "wrong refresh token", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/v1/auth/create": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register",
                "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/controllers.CredentialsRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                    "400": {"description": "username already taken", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/v1/auth/account/info": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/v1/auth/password": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Change password",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.ChangePasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TokenPair"}},
                    "401": {"description": "wrong username or password", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/v1/events/create": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create or update an event",
                "parameters": [{"in": "body", "name": "event", "required": true, "schema": {"$ref": "#/definitions/controllers.SaveEventRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "406": {"description": "wrong user_type", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/v1/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"type": "integer", "description": "City id", "name": "city", "in": "query"},
                    {"type": "string", "description": "Only events starting at or after this time", "name": "start_time", "in": "query"},
                    {"type": "string", "description": "Only events ending at or before this time", "name": "end_time", "in": "query"},
                    {"type": "string", "description": "Comma-separated subject ids; events with any of them match", "name": "subjects", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/controllers.EventResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/v1/events/filters/save": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["filters"],
                "summary": "Create or update a saved filter",
                "parameters": [{"in": "body", "name": "filter", "required": true, "schema": {"$ref": "#/definitions/controllers.SaveFilterRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.FilterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/v1/events/filters": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["filters"],
                "summary": "List the caller's saved filters",
                "parameters": [
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/controllers.FilterResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.CredentialsRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "controllers.RefreshRequest": {
            "type": "object",
            "properties": {"refresh_token": {"type": "string"}}
        },
        "controllers.ChangePasswordRequest": {
            "type": "object",
            "properties": {"old_password": {"type": "string"}, "new_password": {"type": "string"}}
        },
        "controllers.SubjectResponse": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
        },
        "controllers.SaveEventRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "start_time": {"type": "string", "example": "2025-06-01T18:00:00Z"},
                "end_time": {"type": "string", "example": "2025-06-01T21:00:00Z"},
                "city": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}},
                "subjects": {"type": "array", "items": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}}}
            }
        },
        "controllers.EventResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "city": {"type": "string"},
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/controllers.SubjectResponse"}}
            }
        },
        "controllers.SaveFilterRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "city": {"type": "integer"},
                "subjects": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "controllers.FilterResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "city": {"type": "integer"},
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/controllers.SubjectResponse"}}
            }
        },
        "domain.TokenPair": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}, "refresh_token": {"type": "string"}}
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "type": {"type": "string"},
                "username": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "helpers.ErrorResponse": {
            "type": "object",
            "properties": {"reason": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Event discovery API",
	Description:      "Accounts, events tagged with cities and subjects, and saved search filters.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
