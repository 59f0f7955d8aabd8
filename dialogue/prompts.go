package dialogue

// Step prompts and validation re-prompts, matching the bot's Arabic voice.
const (
	PromptFullName = `📝 *تسجيل عضو جديد*

ما هو اسمك الكامل؟`

	RejectFullName = `⚠️ الاسم قصير جداً.

يرجى إدخال الاسم الكامل (٣ أحرف على الأقل):`

	PromptFamilyHead = `👨‍👩‍👧‍👦 ما هو اسم رب الأسرة؟`

	RejectFamilyHead = `⚠️ الاسم قصير جداً.

يرجى إدخال اسم رب الأسرة (٣ أحرف على الأقل):`

	PromptPhone = `📞 ما هو رقم هاتفك؟`

	RejectPhone = `⚠️ الرقم غير صحيح.

يرجى إدخال رقم هاتف صحيح (١٠ أرقام على الأقل):`

	PromptWhatsapp = `💬 ما هو رقم الواتساب الخاص بك؟

اكتب "نفس الرقم" إذا كان نفس رقم الهاتف.`

	RejectWhatsapp = `⚠️ الرقم غير صحيح.

يرجى إدخال رقم واتساب صحيح، أو اكتب "نفس الرقم":`

	PromptCancelled = `❌ تم إلغاء التسجيل.

يمكنك البدء من جديد بالأمر /start`
)
