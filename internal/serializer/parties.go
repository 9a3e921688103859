package serializer

import (
	"fmt"

	"github.com/aegisshield/irregular-report/internal/relation"
	"github.com/aegisshield/irregular-report/internal/report"
)

// checkEntities rejects entities whose tag is unknown or whose variant is
// missing. It runs before either party wrapper is opened.
func (b *builder) checkEntities(entities []report.InvolvedEntity) {
	for i := range entities {
		e := &entities[i]
		switch e.Kind {
		case report.EntityKindPerson:
			if e.Person == nil {
				b.w.modelError(fmt.Sprintf("entities[%d].person", i), "person variant is missing")
				return
			}
		case report.EntityKindCorporate:
			if e.Corporate == nil {
				b.w.modelError(fmt.Sprintf("entities[%d].corporate", i), "corporate variant is missing")
				return
			}
		default:
			b.w.modelError(fmt.Sprintf("entities[%d].kind", i), fmt.Sprintf("unknown entity kind %q", e.Kind))
			return
		}
	}
}

// persons emits the person variants of entities in list order.
func (b *builder) persons(entities []report.InvolvedEntity) {
	b.w.collection("Persons", func() {
		for i := range entities {
			if entities[i].Kind == report.EntityKindPerson {
				b.person(entities[i].Person)
			}
		}
	})
}

// corporates emits the corporate variants of entities in list order.
func (b *builder) corporates(entities []report.InvolvedEntity) {
	b.w.collection("Corporates", func() {
		for i := range entities {
			if entities[i].Kind == report.EntityKindCorporate {
				b.corporate(entities[i].Corporate)
			}
		}
	})
}

func (b *builder) identityDocument(d *report.IdentityDocument) {
	b.w.block("IdentificationDocument", func() {
		b.w.scalar("IDType", d.Type)
		b.otherIfCode("IDTypeDesc", d.Type, d.TypeOther)
		b.w.scalar("IDNumber", d.Number)
		b.w.scalar("IDCountry", d.Country)
	})
}

// entityTail emits the contact details and relations every party ends with.
func (b *builder) entityTail(base *report.EntityBase) {
	b.addresses(base.Addresses)
	b.phones(base.Phones)
	b.emails(base.Emails)
	b.w.scalar("EntityComment", base.Comment)
	b.eventRelations(relation.EntityToEvent, base.EventRelations)
	b.entityRelations(relation.EntityToEntity, base.EntityRelations)
}

func (b *builder) person(p *report.Person) {
	b.w.block("Person", func() {
		b.w.scalar("EntityID", p.LocalID)
		b.identityDocument(&p.Identity)
		b.w.scalar("LastName", p.LastName)
		b.w.scalar("FirstName", p.FirstName)
		b.w.scalar("LatinName", p.LatinName)
		b.w.scalar("BirthDate", p.BirthDate)
		b.w.scalar("Gender", p.EntityGender)
		b.otherIfCode("GenderDesc", p.EntityGender, p.EntityGenderDesc)
		b.w.scalar("ResidenceStatus", p.ResidenceStatus)
		b.codes("Professions", "Profession", p.Professions)
		b.otherIfSelected("ProfessionDesc", p.Professions, p.ProfessionOther)
		b.entityTail(&p.EntityBase)
	})
}

func (b *builder) corporate(c *report.Corporate) {
	b.w.block("Corporate", func() {
		b.w.scalar("EntityID", c.LocalID)
		b.identityDocument(&c.Identity)
		b.w.scalar("CorporateName", c.Name)
		b.w.scalar("FoundationDate", c.FoundationDate)
		b.w.scalar("ResidenceStatus", c.ResidenceStatus)
		b.w.scalar("FieldOfBusiness", c.FieldOfBusiness)
		b.entityTail(&c.EntityBase)
	})
}
