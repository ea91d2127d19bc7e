package rewrite

import (
	"os"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Conditional block names used by the dog-sale catalogue.
const (
	CondPet        = "isPet"
	CondFullRights = "isFullRights"
)

// Conditional wraps text in a {#name}...{/name} block.
func Conditional(name, text string) string {
	return "{#" + name + "}" + text + "{/" + name + "}"
}

// DogSaleCatalogue returns the ordered rule catalogue for the dog-sale
// contract. Order matters: the notary scans run last, over the text left by
// the literal rules.
func DogSaleCatalogue() []Rule {
	return []Rule{
		ReplaceParagraph("This Agreement dated",
			"This Agreement dated {agreementDate} is between (Buyer: {buyerName}, "+
				"{buyerFullAddress}, {buyerPhone}, {buyerEmail}) herein referred to as Buyer "+
				"and {breederName} of {kennelName} herein referred to as Breeder."),
		ReplaceParagraph("In Consideration of the total sum",
			"In Consideration of the total sum of {salePrice} ({salePriceWords}) and the mutual promises "+
				"contained herein, Breeder has agreed to sell, and Buyer has agreed to purchase "+
				"{puppyCount} ({maleCount} male, {femaleCount} female) American Bully puppy."),
		ReplaceParagraph("Born on", "Born on {puppyDOBLong}"),
		ReplaceParagraph("Sire:", "Sire: {sireName}"),
		ReplaceParagraph("Dam:", "Dam: {damName}"),
		ReplaceParagraph("The puppy is sold as a pet", Conditional(CondPet,
			"The puppy is sold as a pet, with no registration, and must be spayed/neutered at no earlier "+
				"than 18 months of age no later than two years of age (as early spay/neuter can be "+
				"detrimental to the dogs overall health and wellness).")),
		ReplaceParagraph("The puppy is sold with breeding rights", Conditional(CondFullRights,
			"The puppy is sold with breeding rights, or “Full Rights\" registration. Buyer will make a "+
				"good faith effort to show the dog or allow the dog to be shown by the Breeder, to its "+
				"ABKC and UKC Championship.")),
		ReplaceParagraph("If No Registration", Conditional(CondPet,
			"If \"No Registration\" has been selected, this puppy is being sold as pet quality only, "+
				"intended for companionship with no guarantees as to breeding soundness, show-ability, "+
				"work ability, trainability, temperament or size at maturity. The Buyer agrees to NO "+
				"BREEDING of this dog (accidental or intentional).  Buyer is to have the dog altered "+
				"(Spay/Neuter/Vasectomy/Hysterectomy) by the age of 2 years old (24 months) but no "+
				"earlier than 18 months of age.")),
		ReplaceParagraph("The Buyer affirms that their purchase", Conditional(CondPet,
			"The Buyer affirms that their purchase is for a \"pet home\" only and not for breeding "+
				"purposes. If the dog produces a litter without the knowledge and written consent of the "+
				"Breeder, the Breeder will be entitled to compensation in the amount of $5,000 (Five "+
				"Thousand Dollars and no Cents) for breach of contract terms. The Buyer herein agrees to "+
				"pay the Breeder an additional $2,000 (Two Thousand Dollars and no cents) per puppy "+
				"produced (dead or alive) from the whelping no later than 30 days after the birth of the "+
				"unwarranted breeding.")),
		ReplaceParagraph("The General Health Guarantee", Conditional(CondPet,
			"The General Health Guarantee also becomes null and void if spay/neuter contract is violated.")),

		// The jurisdiction blank is punctuated differently across contract
		// variants; any of these may be absent.
		ReplaceText("State of ________, County of ________", "State of {state}, County of {county}"),
		ReplaceText("State of ___________ County of ____________", "State of {state} County of {county}"),
		ReplaceText("State of (______), County of (_____)", "State of ({state}), County of ({county})"),

		ReplaceParagraph("Signed on", "Signed on {signingDate}"),
		ReplaceParagraph("On this _____ day of _________",
			"On this {signingDate}, before me, the undersigned, a Notary Public in and for said State, "+
				"personally appeared _____________________, personally known to me or proved to me on the "+
				"basis of satisfactory evidence to be the individual whose name is subscribed to the within "+
				"Instrument and acknowledged to me that s/he/they executed the same in her/his/their "+
				"capacity, and that by her/his/their signature on the instrument, the individuals, or the "+
				"person upon behalf of which the individuals acted, executed the instrument."),
		ReplaceParagraph("This Agreement is made and entered into this ______ day of",
			"This Agreement is made and entered into this {agreementDate}"),
		ReplaceParagraph("By and between", "By and between {breederName} (Breeder) and {buyerName} (Buyer),"),
		ReplaceParagraph("For the purpose of setting forth the terms",
			"For the purpose of setting forth the terms and conditions of purchase by the Buyer of a "+
				"Purebred American Bully from the litter born on {puppyDOBLong}. Out of {sireName} (Sire), "+
				"and {damName} (Dam). For {salePrice} the Breeder agrees to sell and buyer agrees to "+
				"purchase a {femaleCount} female, {maleCount} male companion puppy from the litter "+
				"described above subject to the following terms."),

		NormalizeState(),
		NormalizeCounty(),
	}
}

// catalogueFile is the YAML layout of a catalogue.
type catalogueFile struct {
	Rules []Rule `yaml:"rules"`
}

// ParseCatalogue decodes and validates a YAML catalogue.
func ParseCatalogue(data []byte) ([]Rule, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Errorf("failed to parse catalogue: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, errors.New("catalogue has no rules")
	}
	for i, rule := range file.Rules {
		if err := rule.Validate(); err != nil {
			return nil, errors.Errorf("rule %d: %w", i+1, err)
		}
	}
	return file.Rules, nil
}

// LoadCatalogue reads a YAML catalogue file.
func LoadCatalogue(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("failed to read catalogue file: %w", err)
	}
	return ParseCatalogue(data)
}

// MarshalCatalogue encodes rules in the layout ParseCatalogue reads.
func MarshalCatalogue(rules []Rule) ([]byte, error) {
	data, err := yaml.Marshal(catalogueFile{Rules: rules})
	if err != nil {
		return nil, errors.Errorf("failed to marshal catalogue: %w", err)
	}
	return data, nil
}
