package http

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"vapredict/autopsy"
)

// OpenAPISpec 描述预测服务对外接口
func OpenAPISpec() *openapi3.T {
	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Verbal autopsy prediction API",
			Description: "Infers whether heart disease was the likely cause of death from a verbal-autopsy health history.",
			Version:     "1.0.0",
		},
		Paths: &openapi3.Paths{},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"HealthData":       healthDataSchema(),
				"PredictionResult": predictionSchema(),
				"ErrorDetail":      detailSchema(),
			},
		},
	}

	predict := &openapi3.Operation{
		Summary:     "Predict cause of death",
		OperationID: "predict",
		RequestBody: &openapi3.RequestBodyRef{
			Value: &openapi3.RequestBody{
				Required: true,
				Content:  openapi3.NewContentWithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/HealthData", nil)),
			},
		},
		Responses: &openapi3.Responses{},
	}
	predict.Responses.Set("200", jsonResponse("Prediction", "#/components/schemas/PredictionResult"))
	predict.Responses.Set("422", jsonResponse("Invalid health data", ""))
	predict.Responses.Set("500", jsonResponse("Model not loaded or prediction failed", "#/components/schemas/ErrorDetail"))

	spec.Paths.Set("/predict", &openapi3.PathItem{Post: predict})
	spec.Paths.Set("/api/predict", &openapi3.PathItem{Post: predict})

	health := &openapi3.Operation{Summary: "Liveness and model status", OperationID: "health", Responses: &openapi3.Responses{}}
	health.Responses.Set("200", jsonResponse("Service status", ""))
	spec.Paths.Set("/api/health", &openapi3.PathItem{Get: health})

	model := &openapi3.Operation{Summary: "Expected model columns", OperationID: "model", Responses: &openapi3.Responses{}}
	model.Responses.Set("200", jsonResponse("Expected feature columns", ""))
	model.Responses.Set("503", jsonResponse("Model not loaded", "#/components/schemas/ErrorDetail"))
	spec.Paths.Set("/api/model", &openapi3.PathItem{Get: model})

	metricsDesc := "Prometheus text exposition"
	metrics := &openapi3.Operation{Summary: "Prediction counters and latency", OperationID: "metrics", Responses: &openapi3.Responses{}}
	metrics.Responses.Set("200", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &metricsDesc,
			Content:     openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/plain"}),
		},
	})
	spec.Paths.Set("/api/metrics", &openapi3.PathItem{Get: metrics})

	return spec
}

func jsonResponse(description, ref string) *openapi3.ResponseRef {
	schema := openapi3.NewObjectSchema().NewRef()
	if ref != "" {
		schema = openapi3.NewSchemaRef(ref, nil)
	}
	return &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &description,
			Content:     openapi3.NewContentWithJSONSchemaRef(schema),
		},
	}
}

func healthDataSchema() *openapi3.SchemaRef {
	schema := openapi3.NewObjectSchema()
	for _, field := range autopsy.FieldNames() {
		if field == "age" {
			schema.WithProperty(field, openapi3.NewIntegerSchema())
			continue
		}
		prop := openapi3.NewStringSchema()
		// answers outside the form's options are accepted and carry no signal
		prop.Description = "Form answers: " + strings.Join(autopsy.AnswerOptions(field), ", ")
		schema.WithProperty(field, prop)
	}
	schema.Required = autopsy.FieldNames()
	return schema.NewRef()
}

func predictionSchema() *openapi3.SchemaRef {
	schema := openapi3.NewObjectSchema().
		WithProperty("conclusion", openapi3.NewStringSchema()).
		WithProperty("explanation", openapi3.NewStringSchema()).
		WithProperty("probability", openapi3.NewFloat64Schema().WithMin(0).WithMax(1))
	schema.Required = []string{"conclusion", "explanation", "probability"}
	return schema.NewRef()
}

func detailSchema() *openapi3.SchemaRef {
	schema := openapi3.NewObjectSchema().WithProperty("detail", openapi3.NewStringSchema())
	schema.Required = []string{"detail"}
	return schema.NewRef()
}
