package shopify

// PublishablePublishMutation publishes a resource to one or more publications
const PublishablePublishMutation = `
mutation publishablePublish($id: ID!, $input: [PublicationInput!]!) {
  publishablePublish(id: $id, input: $input) {
    publishable {
      availablePublicationsCount {
        count
      }
    }
    shop {
      publicationCount
    }
    userErrors {
      field
      message
    }
  }
}
`

// PublicationInput is one entry of the publishablePublish input list (publishDate is RFC 3339).
type PublicationInput struct {
	PublicationID string `json:"publicationId"`
	PublishDate   string `json:"publishDate,omitempty"`
}

// UserError is the userErrors element shape shared by Admin API mutations
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}
