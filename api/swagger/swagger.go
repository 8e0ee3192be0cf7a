package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Escola Aulas API",
        "description": "Class scheduling, substitute assignment and professor notifications",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Login and account registration"},
        {"name": "Professores", "description": "Professor roster"},
        {"name": "Aulas", "description": "Class sessions and substitutes"},
        {"name": "Notificacoes", "description": "Professor inbox"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate professor",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Email and password are required", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/Error"}},
                    "429": {"description": "Too many failed attempts", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register professor",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Missing fields or invalid perfil", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/professores": {
            "get": {
                "tags": ["Professores"],
                "summary": "List professores (coordenador)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Insufficient permissions", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/professores/me": {
            "get": {
                "tags": ["Professores"],
                "summary": "Current professor",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Professor not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/aulas": {
            "get": {
                "tags": ["Aulas"],
                "summary": "List aulas",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "professor_id", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Aulas"],
                "summary": "Schedule aula (coordenador)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateAulaRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Referenced row not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/aulas/export": {
            "get": {
                "tags": ["Aulas"],
                "summary": "Export aulas as CSV or PDF (coordenador)",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"], "default": "csv"},
                    {"in": "query", "name": "professor_id", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/aulas/{id}": {
            "get": {
                "tags": ["Aulas"],
                "summary": "Get aula",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Aula not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "tags": ["Aulas"],
                "summary": "Partially update aula (coordenador)",
                "description": "Only present fields are written. Assigning a new substituto sends them a notification.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/UpdateAulaRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated, with notification_sent"},
                    "400": {"description": "No fields to update", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Aula or referenced row not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/notificacoes": {
            "get": {
                "tags": ["Notificacoes"],
                "summary": "List notificacoes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "professor_id", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Other professor's inbox", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "post": {
                "tags": ["Notificacoes"],
                "summary": "Send notificacao (coordenador)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateNotificacaoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "professor_id and mensagem are required", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Professor not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/notificacoes/{id}/read": {
            "put": {
                "tags": ["Notificacoes"],
                "summary": "Mark notificacao read",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Notification not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/Professor"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["nome", "email", "password"],
            "properties": {
                "nome": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "perfil": {"type": "string", "enum": ["professor", "coordenador"]}
            }
        },
        "Professor": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "nome": {"type": "string"},
                "email": {"type": "string"},
                "perfil": {"type": "string"}
            }
        },
        "CreateAulaRequest": {
            "type": "object",
            "required": ["professor_id", "turma_id", "disciplina_id", "sala_id", "data", "horario_inicio", "horario_fim"],
            "properties": {
                "professor_id": {"type": "string"},
                "turma_id": {"type": "string"},
                "disciplina_id": {"type": "string"},
                "sala_id": {"type": "string"},
                "data": {"type": "string", "example": "2024-01-20"},
                "horario_inicio": {"type": "string", "example": "08:00:00"},
                "horario_fim": {"type": "string", "example": "09:30:00"},
                "observacoes": {"type": "string"}
            }
        },
        "UpdateAulaRequest": {
            "type": "object",
            "properties": {
                "professor_id": {"type": "string"},
                "turma_id": {"type": "string"},
                "disciplina_id": {"type": "string"},
                "sala_id": {"type": "string"},
                "data": {"type": "string"},
                "horario_inicio": {"type": "string"},
                "horario_fim": {"type": "string"},
                "substituto_id": {"type": "string", "x-nullable": true},
                "observacoes": {"type": "string", "x-nullable": true}
            }
        },
        "CreateNotificacaoRequest": {
            "type": "object",
            "required": ["professor_id", "mensagem"],
            "properties": {
                "professor_id": {"type": "string"},
                "mensagem": {"type": "string"},
                "data_envio": {"type": "string", "example": "2024-01-15 09:00:00"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
