// Command lambda serves the HTTP API behind API Gateway.
package main

import (
	"context"
	"log"
	"strings"
	"time"

	"wordaday-backend/infrastructure/config"
	"wordaday-backend/infrastructure/di"
	"wordaday-backend/interfaces/http/rest"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	chiLambda *chiadapter.ChiLambdaV2
	container *di.Container
	coldStart = true
)

func init() {
	start := time.Now()
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	handler := rest.NewRouter(container).Setup()
	chiRouter, ok := handler.(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.NewV2(chiRouter)

	container.Logger.Info("Cold start completed",
		zap.Duration("duration", time.Since(start)),
	)
}

// Handler proxies API Gateway events through the router. The gateway's JWT
// authorizer has already validated the caller; its claims are forwarded as
// identity headers for the auth middleware.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	forwardAuthorizerClaims(&req)

	resp, err := chiLambda.ProxyWithContextV2(ctx, req)

	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}
	if coldStart {
		resp.Headers["X-Cold-Start"] = "true"
		coldStart = false
	}
	if req.RequestContext.RequestID != "" {
		resp.Headers["X-Request-ID"] = req.RequestContext.RequestID
	}
	return resp, err
}

// forwardAuthorizerClaims maps the gateway authorizer's JWT claims onto the
// identity headers the middleware reads. Requests that reach this function
// without claims fall through to local token validation.
func forwardAuthorizerClaims(req *events.APIGatewayV2HTTPRequest) {
	if req.RequestContext.Authorizer == nil || req.RequestContext.Authorizer.JWT == nil {
		return
	}
	claims := req.RequestContext.Authorizer.JWT.Claims
	sub := claims["sub"]
	if sub == "" {
		return
	}

	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}
	req.Headers["X-API-Gateway-Authorized"] = "true"
	req.Headers["X-User-ID"] = sub
	if email := claims["email"]; email != "" {
		req.Headers["X-User-Email"] = email
	}
	if roles := claims["roles"]; roles != "" {
		req.Headers["X-User-Roles"] = strings.Trim(roles, "[] ")
	}
}

func main() {
	lambda.Start(Handler)
}
