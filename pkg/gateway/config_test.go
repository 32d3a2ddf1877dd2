package gateway_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ubique/stylist/pkg/gateway"
)

var _ = Describe("Config", func() {
	It("strips trailing slashes before composing the completions URL", func() {
		cfg := gateway.Config{
			Endpoint:   "https://fashion.openai.azure.com///",
			APIKey:     "key",
			Deployment: "gpt-4o",
			APIVersion: "2024-12-01-preview",
		}

		Expect(cfg.CompletionsURL()).To(Equal(
			"https://fashion.openai.azure.com/openai/deployments/gpt-4o/chat/completions?api-version=2024-12-01-preview",
		))
	})

	It("defaults the API version", func() {
		cfg := gateway.Config{Endpoint: "https://x", APIKey: "k", Deployment: "d"}
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.APIVersion).To(Equal(gateway.DefaultAPIVersion))
	})

	It("names every missing setting", func() {
		cfg := gateway.Config{APIKey: "k"}
		err := cfg.Validate()

		var cfgErr *gateway.ConfigError
		Expect(err).To(BeAssignableToTypeOf(cfgErr))
		cfgErr = err.(*gateway.ConfigError)
		Expect(cfgErr.Missing).To(ConsistOf("AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_DEPLOYMENT"))
	})

	Describe("EnvResolver", func() {
		var saved map[string]*string

		keys := []string{
			"AZURE_OPENAI_ENDPOINT",
			"AZURE_OPENAI_API_KEY",
			"AZURE_OPENAI_DEPLOYMENT",
			"AZURE_OPENAI_API_VERSION",
		}

		BeforeEach(func() {
			saved = map[string]*string{}
			for _, k := range keys {
				if v, ok := os.LookupEnv(k); ok {
					saved[k] = &v
				}
				os.Unsetenv(k)
			}
		})

		AfterEach(func() {
			for _, k := range keys {
				os.Unsetenv(k)
				if v := saved[k]; v != nil {
					os.Setenv(k, *v)
				}
			}
		})

		It("reads the deployment from the environment on every call", func() {
			os.Setenv("AZURE_OPENAI_ENDPOINT", "https://fashion.openai.azure.com/")
			os.Setenv("AZURE_OPENAI_API_KEY", "secret")
			os.Setenv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o")

			cfg, err := gateway.EnvResolver{}.Resolve()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.APIKey).To(Equal("secret"))
			Expect(cfg.APIVersion).To(Equal(gateway.DefaultAPIVersion))

			os.Setenv("AZURE_OPENAI_API_VERSION", "2025-01-01")
			cfg, err = gateway.EnvResolver{}.Resolve()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.APIVersion).To(Equal("2025-01-01"))
		})

		It("fails when the environment is empty", func() {
			_, err := gateway.EnvResolver{}.Resolve()

			var cfgErr *gateway.ConfigError
			Expect(err).To(BeAssignableToTypeOf(cfgErr))
		})
	})
})
