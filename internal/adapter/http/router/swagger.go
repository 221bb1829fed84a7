package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Account Ledger Service API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Account Ledger Service API",
    "version": "1.0.0"
  },
  "paths": {
    "/api/v1/accounts": {
      "get": {
        "summary": "List accounts by type",
        "parameters": [
          {
            "name": "accountTypes",
            "in": "query",
            "required": true,
            "schema": {"type": "string"},
            "example": "CHECKING,SAVINGS,PRIVATE_LOAN"
          }
        ],
        "responses": {
          "200": {"description": "Accounts retrieved"},
          "400": {"description": "Unknown account type"}
        }
      }
    },
    "/api/v1/accounts/balance": {
      "get": {
        "summary": "Get account balance",
        "parameters": [
          {
            "name": "iban",
            "in": "query",
            "required": true,
            "schema": {"type": "string"}
          }
        ],
        "responses": {
          "200": {"description": "Balance retrieved"},
          "404": {"description": "Account not found"}
        }
      }
    },
    "/api/v1/accounts/transactions": {
      "get": {
        "summary": "Get account transaction history",
        "parameters": [
          {
            "name": "iban",
            "in": "query",
            "required": true,
            "schema": {"type": "string"}
          }
        ],
        "responses": {
          "200": {"description": "Transaction history retrieved"},
          "404": {"description": "Account not found"}
        }
      }
    },
    "/api/v1/accounts/transaction": {
      "patch": {
        "summary": "Apply a deposit, withdrawal or transfer",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["amount", "type"],
                "properties": {
                  "fromIban": {"type": "string"},
                  "toIban": {"type": "string"},
                  "amount": {"type": "string", "example": "50.00"},
                  "type": {"type": "string", "enum": ["DEPOSIT", "WITHDRAW", "TRANSFER"]}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Transaction successful"},
          "400": {"description": "Operation not permitted or malformed request"},
          "404": {"description": "Account not found"},
          "409": {"description": "Concurrent update conflict, retry"}
        }
      }
    }
  }
}`
