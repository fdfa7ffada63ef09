// Package docs is generated by swaggo/swag. Regenerate with
// `swag init -g cmd/fin-analyzer/main.go`.
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
        "/": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Service banner",
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness and model status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/upload": {
            "post": {
                "description": "Categorize every row of a CSV with Description and Amount columns, replace the latest summary and report budget alerts",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Upload a transactions CSV",
                "parameters": [
                    {"type": "file", "description": "CSV file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/set_budget": {
            "post": {
                "description": "Create or overwrite the budget for one category",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["budgets"],
                "summary": "Set a category budget",
                "parameters": [
                    {"description": "Budget", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SetBudgetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/reset_budgets": {
            "post": {
                "produces": ["application/json"],
                "tags": ["budgets"],
                "summary": "Remove all budgets",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}}
            }
        },
        "/get_budgets": {
            "get": {
                "description": "Current category to budget mapping",
                "produces": ["application/json"],
                "tags": ["budgets"],
                "summary": "List budgets",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "number"}}}}
            }
        },
        "/expense_insights": {
            "get": {
                "description": "Compare every budget with the latest uploaded summary",
                "produces": ["application/json"],
                "tags": ["budgets"],
                "summary": "Budget insights",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/dto.InsightResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/export/pdf": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["reports"],
                "summary": "Export summary as PDF",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/export/excel": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["reports"],
                "summary": "Export summary and budgets as a workbook",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/visualize": {
            "get": {
                "produces": ["image/png"],
                "tags": ["reports"],
                "summary": "Bar chart of totals per category",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/advice": {
            "post": {
                "description": "Answer a question about the latest upload and budgets with GigaChat",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["advice"],
                "summary": "Ask for spending advice",
                "parameters": [
                    {"description": "Question", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AdviceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AdviceResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.AdviceRequest": {
            "type": "object",
            "required": ["question"],
            "properties": {"question": {"type": "string"}}
        },
        "dto.AdviceResponse": {
            "type": "object",
            "properties": {"answer": {"type": "string"}}
        },
        "dto.AlertResponse": {
            "type": "object",
            "properties": {
                "budget": {"type": "number"},
                "category": {"type": "string"},
                "percentage": {"type": "number"},
                "spent": {"type": "number"}
            }
        },
        "dto.CategoryTotalResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "total": {"type": "number"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "model_labels": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"}
            }
        },
        "dto.InsightResponse": {
            "type": "object",
            "properties": {
                "budget": {"type": "number"},
                "percentage_spent": {"type": "number"},
                "remaining": {"type": "number"},
                "spent": {"type": "number"}
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "dto.SetBudgetRequest": {
            "type": "object",
            "required": ["amount", "category"],
            "properties": {
                "amount": {"type": "number", "minimum": 0},
                "category": {"type": "string"}
            }
        },
        "dto.TransactionResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "dto.UploadResponse": {
            "type": "object",
            "properties": {
                "alerts": {"type": "array", "items": {"$ref": "#/definitions/dto.AlertResponse"}},
                "expenses": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}},
                "file_name": {"type": "string"},
                "summary": {"type": "array", "items": {"$ref": "#/definitions/dto.CategoryTotalResponse"}},
                "upload_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AI Financial Analyzer API",
	Description:      "Categorizes uploaded bank transactions, tracks budgets and exports reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
