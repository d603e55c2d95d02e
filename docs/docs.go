// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"type": "boolean", "description": "Only published events", "name": "published", "in": "query"},
                    {"type": "string", "description": "Category, case-insensitive", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventListSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create an event",
                "parameters": [
                    {"description": "Event data", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.EventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request or validation_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/public/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "List published events",
                "parameters": [
                    {"type": "string", "description": "Category, case-insensitive", "name": "category", "in": "query"},
                    {"type": "boolean", "description": "Only featured events", "name": "featured", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventListSuccessResponse"}}
                }
            }
        },
        "/public/events/{eventID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Get a published event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/public/events/{eventID}/registrations": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Register for an event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true},
                    {"description": "Attendee details", "name": "registration", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.RegistrationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.RegistrationSuccessResponse"}},
                    "400": {"description": "error.code: bad_request or validation_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/public/tickets/{token}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Verify a ticket code",
                "parameters": [
                    {"type": "string", "description": "Ticket code", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.TicketSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/admin/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List events for the admin dashboard",
                "parameters": [
                    {"enum": ["all", "upcoming", "past", "draft"], "type": "string", "name": "tab", "in": "query"},
                    {"type": "string", "description": "Title search", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.AdminEventListSuccessResponse"}},
                    "307": {"description": "redirect to /login when the admin gate denies the request"},
                    "400": {"description": "error.code: validation_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create an event",
                "parameters": [
                    {"description": "Event data", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.EventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "307": {"description": "redirect to /login when the admin gate denies the request"}
                }
            }
        },
        "/admin/events/{eventID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Get an event for editing",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Replace an event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true},
                    {"description": "Event data", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.EventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "tags": ["admin"],
                "summary": "Delete an event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "event deleted"},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/login": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Admin login landing",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.LoginSuccessResponse"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [
                    {"description": "Admin password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.LoginSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin logout",
                "responses": {"204": {"description": "cookie cleared"}}
            }
        }
    },
    "definitions": {
        "controllers.OrganizerRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "image": {"type": "string"}}
        },
        "controllers.EventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "content": {"type": "string"},
                "image": {"type": "string"},
                "category": {"type": "string", "enum": ["workshop", "meetup", "tech-talk", "hackathon", "conference", "social", "sports", "education"]},
                "location": {"type": "string"},
                "startDate": {"type": "string", "example": "2025-06-01T10:00:00Z"},
                "endDate": {"type": "string", "example": "2025-06-01T18:00:00Z"},
                "price": {"type": "number"},
                "capacity": {"type": "integer"},
                "isFeatured": {"type": "boolean"},
                "isPublished": {"type": "boolean"},
                "organizer": {"$ref": "#/definitions/controllers.OrganizerRequest"}
            }
        },
        "controllers.RegistrationRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "tickets": {"type": "integer", "example": 2}}
        },
        "controllers.LoginRequest": {
            "type": "object",
            "properties": {"password": {"type": "string"}}
        },
        "controllers.LoginSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "object", "properties": {"authenticated": {"type": "boolean"}, "message": {"type": "string"}}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.EventSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.Event"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.EventListSuccessResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.AdminEventListSuccessResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/domain.AdminEvent"}}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.RegistrationSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.Registration"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.TicketSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.TicketClaims"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "domain.Organizer": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "image": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "content": {"type": "string"},
                "image": {"type": "string"},
                "category": {"type": "string"},
                "location": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "price": {"type": "number"},
                "capacity": {"type": "integer"},
                "attendees": {"type": "integer"},
                "isFeatured": {"type": "boolean"},
                "isPublished": {"type": "boolean"},
                "organizerId": {"type": "string"},
                "organizer": {"$ref": "#/definitions/domain.Organizer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.AdminEvent": {
            "allOf": [
                {"$ref": "#/definitions/domain.Event"},
                {"type": "object", "properties": {"status": {"type": "string", "enum": ["draft", "upcoming", "past"]}}}
            ]
        },
        "domain.Registration": {
            "type": "object",
            "properties": {
                "eventId": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "tickets": {"type": "integer"},
                "totalPrice": {"type": "number"},
                "token": {"type": "string"},
                "createdAt": {"type": "string"},
                "event": {"$ref": "#/definitions/domain.Event"}
            }
        },
        "domain.TicketClaims": {
            "type": "object",
            "properties": {
                "eventId": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "tickets": {"type": "integer"},
                "issuedAt": {"type": "string"},
                "expiresAt": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "array", "items": {"type": "string"}}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {"data": {}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Event Listing API",
	Description:      "Public event listing, registration and an admin dashboard behind a cookie/IP gate.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
