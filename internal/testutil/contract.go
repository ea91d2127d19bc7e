package testutil

// ContractOfSale returns the paragraph texts of a filled-in dog-sale contract
// laid out like the documents the built-in catalogue was written for. Every
// required needle appears exactly once and blank separator paragraphs sit at
// indices 1 and 7.
func ContractOfSale() []string {
	return []string{
		"PUPPY SALE CONTRACT",
		"",
		"This Agreement dated 2024-01-01 is between (Buyer: Jane Doe, 12 Elm St, Springfield, IL, 555-0100, jane@example.com) herein referred to as Buyer and John Smith of Bully Kennels herein referred to as Breeder.",
		"In Consideration of the total sum of $3,500 (Three Thousand Five Hundred Dollars) and the mutual promises contained herein, Breeder has agreed to sell, and Buyer has agreed to purchase 1 (1 male, 0 female) American Bully puppy.",
		"Born on March 3, 2024",
		"Sire: Big Tank",
		"Dam: Lady Blue",
		"",
		"The puppy is sold as a pet, with no registration, and must be spayed/neutered at no earlier than 18 months of age no later than two years of age.",
		"The puppy is sold with breeding rights, or “Full Rights\" registration.",
		"If No Registration has been selected, this puppy is being sold as pet quality only.",
		"The Buyer affirms that their purchase is for a pet home only and not for breeding purposes.",
		"The General Health Guarantee also becomes null and void if spay/neuter contract is violated.",
		"This contract is governed by the laws of the State of ________, County of ________ and any dispute shall be heard there.",
		"Signed on ____________",
		"STATE OF\u00a0NEW YORK\u00a0\u00a0\u00a0)",
		"COUNTY OF ________ )SS.: witness",
		"On this _____ day of _________, 20__, before me, the undersigned, a Notary Public, personally appeared.",
		"This Agreement is made and entered into this ______ day of ________, 20__",
		"By and between ________ (Breeder) and ________ (Buyer),",
		"For the purpose of setting forth the terms and conditions of purchase by the Buyer of a Purebred American Bully.",
		"Breeder Signature: ____________",
	}
}
