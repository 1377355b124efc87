package exp

import (
	"os"
	"strings"

	"github.com/embedx-ml/embedx/cmd/embedx/repo"
	"github.com/embedx-ml/embedx/pkg/client"
)

const EmbedxAuthEnv = "EMBEDX_AUTH"

// Reference is a client reference together with the authorization resolved
// from the local registry aliases.
type Reference struct {
	client.Reference
	Authorization string
}

func (r Reference) Client() *client.Client {
	return client.NewClient(r.Registry, r.Authorization)
}

// ParseReference resolves a reference given on the command line. A reference
// without a scheme is looked up as a registry alias first, carrying the
// alias token as authorization. Single-segment repositories are placed under
// the library organization.
func ParseReference(raw string) (Reference, error) {
	auth := os.Getenv(EmbedxAuthEnv)
	if !strings.Contains(raw, "://") {
		splits := strings.SplitN(raw, repo.SplitorRepo, 2)
		details, err := repo.DefaultRepoManager.Get(splits[0])
		if err != nil {
			return Reference{}, err
		}
		if auth == "" && details.Token != "" {
			auth = "Bearer " + details.Token
		}
		if len(splits) == 2 {
			raw = details.URL + "/" + splits[1]
		} else {
			raw = details.URL
		}
	}

	ref, err := client.ParseReference(raw)
	if err != nil {
		return Reference{}, err
	}
	if ref.Repository != "" && !strings.Contains(ref.Repository, "/") {
		ref.Repository = "library/" + ref.Repository
	}
	return Reference{Reference: ref, Authorization: auth}, nil
}
