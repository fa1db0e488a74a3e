// Standard interfaces and datatypes for talking to the document store.
// Terms:
//   "documents endpoint" : base URL of the document API, ending in /documents
//   "API root" : the documents endpoint without its /documents segment
//   "destination" : a named endpoint that documents are transferred between

package docstore

import (
	"github.com/sirupsen/logrus"
)

// Logger is satisfied by *logrus.Logger and *logrus.Entry.
type Logger interface {
	logrus.FieldLogger
}

// Endpoints and credentials shared by every sample. Values are read once and
// never mutated.
type Config struct {
	DocumentsEndpoint string
	TransfersEndpoint string
	SocketEndpoint    string
	User              string
	Password          string

	// Optional, only the transfer sample needs these
	FromDestination string
	ToDestination   string
}

type Preference struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type TransferRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Document string `json:"document"`
}

// Field name the store expects for uploaded file content
const UploadField = "document"
