// Package swagger registers the OpenAPI document served under /swagger.
package swagger

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
        "/booking/libraries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["booking"],
                "summary": "List libraries with seat occupancy",
                "parameters": [
                    {"type": "number", "name": "latitude", "in": "query"},
                    {"type": "number", "name": "longitude", "in": "query"},
                    {"type": "number", "name": "radius_km", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/booking/libraries/{id}/subscription-plans": {
            "get": {
                "tags": ["booking"],
                "summary": "Active subscription plans of a library",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/booking/seat-booking": {
            "post": {
                "tags": ["booking"],
                "summary": "Create a pending seat booking",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/booking/anonymous-seat-booking": {
            "post": {
                "tags": ["booking"],
                "summary": "Create a pending seat booking without an account",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/booking/student-seat-booking/payment-init": {
            "post": {
                "tags": ["booking"],
                "summary": "Open a gateway order for the booking token",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/booking/student-seat-booking/payment-verify": {
            "post": {
                "tags": ["booking"],
                "summary": "Verify the token payment and create the booking",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/booking/seat-bookings": {
            "get": {
                "tags": ["admin"],
                "summary": "Bookings of the admin's library",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "integer", "name": "skip", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/booking/seat-bookings/{id}": {
            "put": {
                "tags": ["admin"],
                "summary": "Approve or reject a pending booking",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "tags": ["admin"],
                "summary": "Approve and activate a pending booking",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/booking/create-razorpay-order": {
            "post": {"tags": ["payment"], "summary": "Open a gateway order for an approved booking", "responses": {"200": {"description": "OK"}}}
        },
        "/booking/confirm-payment": {
            "post": {"tags": ["payment"], "summary": "Confirm payment and activate the booking", "responses": {"200": {"description": "OK"}}}
        },
        "/booking/verify-razorpay-payment": {
            "post": {"tags": ["payment"], "summary": "Verify a gateway payment and activate the booking", "responses": {"200": {"description": "OK"}}}
        },
        "/payments/create-order": {
            "post": {"tags": ["payment"], "summary": "Open a renewal order", "responses": {"200": {"description": "OK"}}}
        },
        "/payments/verify": {
            "post": {"tags": ["payment"], "summary": "Verify a renewal payment", "responses": {"200": {"description": "OK"}}}
        },
        "/student-removal/requests": {
            "get": {
                "tags": ["removal"],
                "summary": "Removal requests with counts",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query", "minimum": 1, "maximum": 100, "default": 50}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/student-removal/requests/{id}": {
            "get": {"tags": ["removal"], "summary": "Get a removal request", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["removal"], "summary": "Decide a removal request", "responses": {"200": {"description": "OK"}}}
        },
        "/student-removal/stats": {
            "get": {"tags": ["removal"], "summary": "Removal statistics", "responses": {"200": {"description": "OK"}}}
        },
        "/student-removal/check-overdue": {
            "post": {"tags": ["removal"], "summary": "Open requests for overdue students", "responses": {"200": {"description": "OK"}}}
        },
        "/student-removal/overdue-students": {
            "get": {"tags": ["removal"], "summary": "Students overdue for renewal", "responses": {"200": {"description": "OK"}}}
        },
        "/student-removal/restore-student/{id}": {
            "post": {"tags": ["removal"], "summary": "Restore a removed student", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "LibraryConnekto booking API",
	Description:      "Seat booking, payment and subscription lifecycle.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
