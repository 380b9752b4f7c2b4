package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/wastegate/wastegate/pkg/client"
)

// Example demonstrates basic usage of the WasteGate client
func Example() {
	// Create a new client
	c := client.NewClient(client.Config{
		BaseURL: "https://api.wastegate.dev",
	})

	ctx := context.Background()

	// Login
	loginResp, err := c.Login(ctx, "operator@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Logged in as: %s\n", loginResp.User.Email)

	// List pending recommendations
	recommendations, err := c.Recommendations().List(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d recommendations\n", len(recommendations))
}

// ExampleScanService_Submit demonstrates submitting detector output for
// classification
func ExampleScanService_Submit() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.wastegate.dev",
	})

	// Login first
	_, err := c.Login(context.Background(), "operator@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	// Submit one scan payload keyed by detection class
	result, err := c.Scans().Submit(context.Background(), client.SubmitScanRequest{
		ScanResults: map[string]interface{}{
			"idle_instances": []interface{}{
				map[string]interface{}{
					"resource_id":  "i-0abc123",
					"environment":  "staging",
					"monthly_cost": 120.0,
				},
			},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Run %s produced %d recommendations\n", result.Run.ID, len(result.Recommendations))
}

// ExampleRecommendationService_List demonstrates listing high-confidence
// pending recommendations
func ExampleRecommendationService_List() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.wastegate.dev",
	})

	// Login first
	_, err := c.Login(context.Background(), "operator@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	status := "pending"
	minConfidence := 0.8

	recommendations, err := c.Recommendations().List(context.Background(), &client.RecommendationListOptions{
		ListOptions: client.ListOptions{
			Page:     1,
			PageSize: 20,
		},
		Status:        &status,
		MinConfidence: &minConfidence,
	})
	if err != nil {
		log.Fatal(err)
	}

	totalSavings := 0.0
	for _, rec := range recommendations {
		fmt.Printf("%s: save $%.2f/month\n", rec.ResourceID, rec.Savings.MidUSD)
		totalSavings += rec.Savings.MidUSD
	}
	fmt.Printf("Total potential savings: $%.2f/month\n", totalSavings)
}

// ExampleRemediationService_Execute demonstrates running an action through
// the safety gauntlet
func ExampleRemediationService_Execute() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.wastegate.dev",
	})

	// Login first
	_, err := c.Login(context.Background(), "operator@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	// Create an action from a recommendation, then execute it
	action, err := c.Remediations().Create(context.Background(), client.CreateRemediationRequest{
		RecommendationID: "rec-123",
	})
	if err != nil {
		log.Fatal(err)
	}

	executed, err := c.Remediations().Execute(context.Background(), action.ID)
	if err != nil {
		log.Fatal(err)
	}

	// Denials are a normal outcome, not an error
	if executed.Status == "denied" {
		fmt.Printf("Denied: %s\n", executed.DenialCode)
		return
	}

	fmt.Printf("Action %s is %s\n", executed.ID, executed.Status)
}

// ExampleSafeOpsService_Filter demonstrates pre-filtering candidates before
// queueing remediations
func ExampleSafeOpsService_Filter() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.wastegate.dev",
	})

	// Login first
	_, err := c.Login(context.Background(), "operator@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	result, err := c.SafeOps().Filter(context.Background(), []client.SafetyResource{
		{ResourceID: "i-0abc123", ResourceType: "idle_instances"},
		{ResourceID: "db-prod-1", ResourceType: "rds_instance"},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d safe, %d excluded\n", len(result.Safe), result.Excluded)
}

// ExampleBreakerService_Status demonstrates checking the circuit breaker
// before a remediation batch
func ExampleBreakerService_Status() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.wastegate.dev",
	})

	// Login first
	_, err := c.Login(context.Background(), "operator@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	status, err := c.Breakers().Status(context.Background(), "acme")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Breaker state: %s\n", status.State)
	fmt.Printf("Can execute: %v\n", status.CanExecute)
}

// ExampleClient_Health demonstrates checking API health
func ExampleClient_Health() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.wastegate.dev",
	})

	health, err := c.Health(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("API Status: %s\n", health.Status)
}

// ExampleClient_apiKey demonstrates using API key authentication
func ExampleClient_apiKey() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.wastegate.dev",
		APIKey:  "your-api-key",
	})

	// No need to login, the API key is sent automatically
	runs, err := c.Scans().List(context.Background(), nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d runs\n", len(runs))
}
