package shopify

// PublicationsQuery lists the shop's sales channels
const PublicationsQuery = `
query getPublications($first: Int!) {
  publications(first: $first) {
    edges {
      node {
        id
        name
        supportsFuturePublishing
      }
    }
  }
}
`

// ProductsCountQuery returns the total number of products, used to size progress output
const ProductsCountQuery = `
query getProductsCount {
  productsCount {
    count
  }
}
`

// ProductsWithPublicationsQuery pages through products with their publication edges.
// Only edges with isPublished=true count as a live channel.
const ProductsWithPublicationsQuery = `
query getProducts($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    edges {
      node {
        id
        title
        handle
        status
        createdAt
        updatedAt
        resourcePublications(first: 20) {
          edges {
            node {
              publication {
                name
                id
              }
              publishDate
              isPublished
            }
          }
        }
      }
      cursor
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}
`

// ProductPublicationsQuery fetches one product's publication edges for post-publish verification
const ProductPublicationsQuery = `
query getProductPublications($id: ID!) {
  product(id: $id) {
    id
    title
    resourcePublications(first: 20) {
      edges {
        node {
          publication {
            name
            id
          }
          isPublished
        }
      }
    }
  }
}
`

// AccessScopesQuery lists the scopes granted to the calling app installation
const AccessScopesQuery = `
query getAccessScopes {
  currentAppInstallation {
    accessScopes {
      handle
    }
  }
}
`
