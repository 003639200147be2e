// Package law embeds the default statute excerpts used by the validate stage
// when the caller supplies none.
package law

// DefaultReferences summarizes the National Contract Act provisions every
// announcement is checked against.
const DefaultReferences = `National Contract Act, key provisions:

Art. 27 (Planned price)
- The planned price is prepared from a survey of the goods or services to be
  contracted.
- The award goes to a bidder at or below the planned price; "at or below",
  never "below".

Art. 10 (Bidding method)
- Open competitive bidding is the default.
- Qualification review applies to construction and service contracts above the
  prescribed amounts.

Art. 26 (Negotiated contract)
- Permitted for specialized technology, urgency, or where competitive bidding
  is impracticable.

Enforcement Decree:

Art. 42 (Qualification review)
- Service contracts with an estimated price of 200 million KRW or more.
- Construction contracts with an estimated price of 300 million KRW or more.
- Goods contracts with an estimated price of 500 million KRW or more.
`
