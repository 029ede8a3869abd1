// Package docs регистрирует описание API для swagger UI.
//
// Файл поддерживается вручную и описывает только жизненный цикл поставок и
// операции со складом. Полную схему по аннотациям обработчиков даёт
// `swag init -g cmd/main.go -o docs`, после чего этот файл заменяется.
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
        "/supplies/order": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["supplies"],
                "summary": "Create supply order",
                "parameters": [
                    {
                        "description": "Order",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/httpapi.createOrderReq"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/domain.Supply"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}}
                }
            }
        },
        "/supplies/send": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["supplies"],
                "summary": "Ship supply",
                "parameters": [
                    {
                        "description": "Supply",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/httpapi.sendSupplyReq"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SendResult"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}}
                }
            }
        },
        "/supplies/receive": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["supplies"],
                "summary": "Receive supply into the store warehouse",
                "parameters": [
                    {
                        "description": "Receive",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/httpapi.receiveSupplyReq"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ReceiveResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}}
                }
            }
        },
        "/supplies/{id}/invoice": {
            "get": {
                "produces": ["application/json"],
                "tags": ["supplies"],
                "summary": "Supply invoice",
                "parameters": [
                    {"type": "integer", "description": "Supply ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Invoice"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}}
                }
            }
        },
        "/warehouse-products/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["warehouse"],
                "summary": "Remove one warehouse unit",
                "parameters": [
                    {"type": "integer", "description": "WarehouseProduct ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}}
                }
            }
        },
        "/warehouse-products/bulk-delete": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["warehouse"],
                "summary": "Remove warehouse units in bulk",
                "parameters": [
                    {
                        "description": "Unit ids",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/httpapi.bulkRemoveReq"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}}
                }
            }
        },
        "/warehouses/store/{storeId}/products-grouped": {
            "get": {
                "produces": ["application/json"],
                "tags": ["warehouse"],
                "summary": "Store warehouse grouped for display",
                "parameters": [
                    {"type": "integer", "description": "Store ID", "name": "storeId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.GroupedWarehouse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpapi.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "httpapi.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "httpapi.createOrderReq": {
            "type": "object",
            "properties": {
                "batchId": {"type": "integer"},
                "storeId": {"type": "integer"},
                "supplierId": {"type": "integer"},
                "quantity": {"type": "integer"}
            }
        },
        "httpapi.sendSupplyReq": {
            "type": "object",
            "properties": {"supplyId": {"type": "integer"}}
        },
        "httpapi.receiveSupplyReq": {
            "type": "object",
            "properties": {
                "supplyId": {"type": "integer"},
                "pricePerItem": {"type": "number"},
                "photo": {"type": "string"}
            }
        },
        "httpapi.bulkRemoveReq": {
            "type": "object",
            "properties": {"warehouseIds": {"type": "array", "items": {"type": "integer"}}}
        },
        "domain.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "expiration": {"type": "integer"},
                "price": {"type": "number"},
                "photo": {"type": "string"}
            }
        },
        "domain.Batch": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "expiration": {"type": "integer"},
                "price": {"type": "number"},
                "photo": {"type": "string"},
                "itemsPerBatch": {"type": "integer"},
                "quantity": {"type": "integer"},
                "supplierId": {"type": "integer"}
            }
        },
        "domain.Supply": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "fromSupplierId": {"type": "integer"},
                "toStoreId": {"type": "integer"},
                "content": {"type": "string"},
                "status": {"type": "string", "enum": ["оформлен", "отправлен", "получено"]},
                "createdAt": {"type": "string"},
                "deliveryTime": {"type": "string"}
            }
        },
        "domain.Warehouse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "storeId": {"type": "integer"},
                "productCount": {"type": "integer"}
            }
        },
        "service.SendResult": {
            "type": "object",
            "properties": {
                "supply": {"$ref": "#/definitions/domain.Supply"},
                "updatedBatch": {
                    "allOf": [{"$ref": "#/definitions/domain.Batch"}],
                    "properties": {"productCount": {"type": "integer"}}
                }
            }
        },
        "service.ReceiveResult": {
            "type": "object",
            "properties": {
                "createdCount": {"type": "integer"},
                "supply": {"$ref": "#/definitions/domain.Supply"},
                "warehouse": {"$ref": "#/definitions/domain.Warehouse"},
                "products": {"type": "array", "items": {"$ref": "#/definitions/domain.Product"}}
            }
        },
        "service.ProductGroup": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/domain.Product"},
                "count": {"type": "integer"},
                "warehouseIds": {"type": "array", "items": {"type": "integer"}},
                "firstWarehouseId": {"type": "integer"}
            }
        },
        "service.GroupedWarehouse": {
            "type": "object",
            "properties": {
                "warehouse": {"$ref": "#/definitions/domain.Warehouse"},
                "groupedProducts": {"type": "array", "items": {"$ref": "#/definitions/service.ProductGroup"}}
            }
        },
        "service.Invoice": {
            "type": "object",
            "properties": {
                "number": {"type": "string"},
                "issuedAt": {"type": "string"},
                "supplyId": {"type": "integer"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"},
                "supplier": {"type": "object"},
                "store": {"type": "object"},
                "line": {"type": "object"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9091",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Postavki API",
	Description:      "Поставки товаров от поставщиков в магазины: заказ, отправка, приёмка на склад.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
